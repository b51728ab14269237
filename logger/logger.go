//go:build !dev
// +build !dev

package logger

import "log"

func HandleError(err error) {
	log.Printf("Error: %v", err)
}

func HandleLog(msg string) {
	log.Println(msg)
}
