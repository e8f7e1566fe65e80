package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := executeContext(); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
