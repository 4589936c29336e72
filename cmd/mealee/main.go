package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var version = "dev"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
		PadLevelText:  true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	root := Root()
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		// the log may point at a file, so errors always go to the terminal
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
