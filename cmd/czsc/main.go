// Command czsc is the CLI surface around the analyzer: analyze replays a
// CSV file and prints a colorized event trace, serve exposes a bar feed
// over WebSocket, and watch attaches to a feed and renders confirmed
// segments live.
package main

func main() {
	Execute()
}
