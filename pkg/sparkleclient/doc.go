// Package sparkleclient provides the primary entry point for constructing a
// client that implements the sparkle.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// proxy interfaces defined in the sparkle package. Most applications import
// sparkleclient to build a client and then navigate the returned
// sparkle.Client.
//
// Quick start
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
//
//	  // Minimal: just a base URI (no auth).
//	  cli, err := sparkleclient.NewWithEndpoint(ctx, "http://127.0.0.1:9860/v1")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a token:
//	  cli, err = sparkleclient.New(ctx, &sparkle.Config{
//	    BaseURI: "http://127.0.0.1:9860/v1",
//	    Token:   "s3cr3t",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Navigate by path; nothing is requested until state is read.
//	  _, host, err := sparkleclient.Resolve(cli, "hosts/h1")
//	  if err != nil { log.Fatal(err) }
//
//	  desired, err := host.Desired(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = desired
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint,
// NewWithToken and NewWithPassword that wrap New with the appropriate
// configuration.
package sparkleclient
