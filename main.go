package main

import "yt-segment-extractor/cmd"

func main() {
	cmd.Execute()
}
