// Command elydora is the companion CLI for the Elydora audit platform. It
// wraps the SDK: installing agent directories, registering agents, building
// and submitting signed operation records, and read-only platform queries.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
