// Genera el hash bcrypt de una contraseña para AUTH_ADMIN_PASS_HASH /
// AUTH_OPERATOR_PASS_HASH.
//
//	go run ./cmd/genhash "mi-contraseña"
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: genhash <contraseña>")
		os.Exit(1)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
