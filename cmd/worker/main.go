package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker fetch [url] | list [key=value ...] | warm")
	}

	switch os.Args[1] {
	case "fetch":
		RunFetch(os.Args[2:])
	case "list":
		RunList(os.Args[2:])
	case "warm":
		RunWarm(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
