package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"codeberg.org/wexar/server/internal/auth"
)

// prints a bearer token for local testing of identified rate limits
// and session ownership
func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found")
	}

	userID := flag.String("user", "", "user id to embed (random uuid when empty)")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	if *userID == "" {
		*userID = uuid.NewString()
	}

	token, err := auth.NewVerifier(secret).GenerateJWT(*userID)
	if err != nil {
		log.Fatalf("failed to generate JWT: %v", err)
	}

	fmt.Printf("test token for user %s:\n%s\n\n", *userID, token)
	fmt.Printf("export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
