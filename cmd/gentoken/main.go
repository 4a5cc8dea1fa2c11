package main

import (
	"fmt"
	"os"

	"github.com/nkiryanov/guestbook/internal/service/auth"
)

func main() {
	token, err := auth.NewAccessToken()
	if err != nil {
		fmt.Printf("error while generating access token: %v", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
