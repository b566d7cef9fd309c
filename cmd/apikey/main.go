// Command apikey prints a backend API key signed with JWT_SECRET.
//
//	apikey -role editor -sub console -ttl 8760h
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/MadinaDev2107/Group-Manager/internal/config"
	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/MadinaDev2107/Group-Manager/internal/utils"
)

func main() {
	role := flag.String("role", model.RoleEditor, "reader or editor")
	subject := flag.String("sub", "console", "key subject")
	ttl := flag.Duration("ttl", 0, "key lifetime, 0 for no expiry")
	flag.Parse()

	cfg := config.Load()

	key, err := utils.GenerateAPIKey(model.APIKeyClaims{Role: *role, Subject: *subject}, cfg.JWT.Secret, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate API key: %v", err)
	}
	fmt.Println(key)
}
