package main

import (
	"speech2text/cmd/s2t/cmd"

	// Import providers to register them
	_ "speech2text/internal/app/api/deepgram"
	_ "speech2text/internal/app/api/openai/whisper"
)

func main() {
	cmd.Execute()
}
