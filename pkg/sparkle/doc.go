// Package sparkle provides types, interfaces, and helpers for working with a
// schema-driven hierarchical resource API.
//
// # Overview
//
// The API publishes a schema at "<base>/schema" describing nested collections
// and the primary key of each. The client fetches it once and exposes every
// collection and entity as a proxy: a lightweight value holding a URI and a
// schema node. Proxies never cache resource data; each read is one request.
// A concrete implementation is provided by the sparkleclient package.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/sparkle/pkg/sparkle"
//	  "github.com/fivetwenty-io/sparkle/pkg/sparkleclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := sparkleclient.NewWithToken(ctx, "http://127.0.0.1:9860/v1", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  hosts, _ := cli.Collection("hosts")
//	  host := hosts.Entity("h1")
//	  desired, err := host.Desired(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = desired
//
//	  _, err = host.Merge(ctx, map[string]interface{}{"state": "present"})
//	  if err != nil { log.Fatal(err) }
//	}
//
// # Errors
//
// Every non-200 response is returned as a *RequestError whose Kind follows a
// fixed hierarchy:
//
//	RequestError
//	├── MethodError   405
//	├── UserError     400
//	├── AccessError   403
//	└── DataError     400 invalid-data
//	    ├── ConflictError 409
//	    ├── PathError     404
//	    └── PatchError    400 invalid-patch
//
// errors.Is against the Err* sentinels follows the hierarchy, so
// errors.Is(err, sparkle.ErrData) matches path, conflict and patch errors too.
//
// # Patches
//
// Patch documents are ordered lists of PatchOperation. Merge is shorthand for
// a single non-standard "x-merge" operation at path "/".
package sparkle
