// Package main is a utility for generating the bcrypt hash of the admin
// dashboard password. The backend stores only the hash — never the raw
// password — so this tool is run once per deployment and its output placed in
// REG_ADMIN_PASSWORD_HASH (or admin.password_hash in config.yaml).
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <password>\n", os.Args[0])
		os.Exit(1)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(hash))
}
