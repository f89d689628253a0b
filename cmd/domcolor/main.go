// Command domcolor renders domain-coloring images of complex functions.
//
// Usage:
//
//	# Render a formula to out.bmp
//	domcolor render "(z^2 - 1)/(z^2 + 1)" -W 800 -H 800
//
//	# Render a YAML job and re-render whenever it changes
//	domcolor render --job roots.yaml --watch
//
//	# Inspect how a formula is lexed and parsed
//	domcolor tokens "2sin(z)^2"
//	domcolor tree --mermaid "2sin(z)^2"
//
//	# Serve images over HTTP
//	domcolor serve --listen :8080
package main

func main() {
	Execute()
}
