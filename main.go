package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/titanbridge/lib/mypublisher"
	"github.com/MarcGrol/titanbridge/lib/mypubsub"
	"github.com/MarcGrol/titanbridge/lib/myqueue"
	"github.com/MarcGrol/titanbridge/lib/mystore"
	"github.com/MarcGrol/titanbridge/lib/mytime"
	"github.com/MarcGrol/titanbridge/lib/myuuid"
	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanclient"
	"github.com/MarcGrol/titanbridge/services/titanops"
	"github.com/MarcGrol/titanbridge/services/titantrigger"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	vault, vaultCleanup, err := myvault.New(c)
	if err != nil {
		log.Fatalf("Error creating vault: %s", err)
	}
	defer vaultCleanup()

	err = seedVaultFromEnv(c, vault)
	if err != nil {
		log.Fatalf("Error seeding vault: %s", err)
	}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	hookStore, hookStoreCleanup, err := mystore.New[titantrigger.HookConfig](c)
	if err != nil {
		log.Fatalf("Error creating hook store: %s", err)
	}
	defer hookStoreCleanup()

	triggerService := titantrigger.NewService(hookStore, publisher, nower, uuider)
	err = triggerService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering trigger service: %s", err)
	}

	client := titanclient.New(nower)
	opsService := titanops.NewService(vault, client, publisher)
	err = opsService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering ops service: %s", err)
	}

	startWebServerBlocking(router)
}

// seedVaultFromEnv stores the connection configured through the environment
// under the default connection uid.
func seedVaultFromEnv(c context.Context, vault myvault.VaultReadWriter) error {
	clientID := os.Getenv("ST_CLIENT_ID")
	if clientID == "" {
		log.Printf("No ST_CLIENT_ID set, skipping vault seeding")
		return nil
	}

	return vault.Put(c, myvault.DefaultConnection, myvault.Credentials{
		Environment:  os.Getenv("ST_ENVIRONMENT"),
		ClientID:     clientID,
		ClientSecret: os.Getenv("ST_CLIENT_SECRET"),
		TenantID:     os.Getenv("ST_TENANT_ID"),
		APIHost:      os.Getenv("ST_API_HOST"),
		AuthHost:     os.Getenv("ST_AUTH_HOST"),
	})
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
