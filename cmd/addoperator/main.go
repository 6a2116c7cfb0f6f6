// cmd/addoperator/main.go
// Creates or updates an API operator account in the database.
//
// Usage:
//
//	go run ./cmd/addoperator -username bot -password secret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"podiumapi/config"
	bundb "podiumapi/db"
	"podiumapi/models"
)

func main() {
	username := flag.String("username", "", "operator name (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	op := &models.Operator{
		Username: *username,
		Password: string(hash),
	}

	_, err = db.NewInsert().Model(op).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert operator:", err)
	}

	fmt.Printf("operator %q saved\n", *username)
}
