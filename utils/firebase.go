package utils

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"huduma/config"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. When no
// credentials are configured the client stays nil and push delivery is
// skipped; notification dispatch is best effort everywhere it is used.
func FirebaseInit() {
	if config.AppConfig.FirebaseCredentials == "" {
		log.Println("firebase: no credentials configured, push delivery disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentials)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
