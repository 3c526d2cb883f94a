// cmd/agentcore/main.go
package main

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	SetVersion(version)
	Execute()
}
