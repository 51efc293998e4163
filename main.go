package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	league "github.com/courtside/league-sync/repos/league"
	resend "github.com/courtside/league-sync/repos/resend"

	auth "github.com/courtside/league-sync/pkg/auth"

	admin "github.com/courtside/league-sync/services/admin"
	matches "github.com/courtside/league-sync/services/matches"
	standings "github.com/courtside/league-sync/services/standings"
	stats "github.com/courtside/league-sync/services/stats"
)

func main() {
	ctx := context.Background()

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	standingsSecret := os.Getenv("STANDINGS_API_SECRET")
	hostURL := os.Getenv("HOST_URL")

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	leagueRepo := league.NewService(firestoreClient)
	resendService := resend.NewService(firestoreClient, hostURL)

	standingsService := standings.NewStandingsService(leagueRepo)
	matchesService := matches.NewMatchesService(leagueRepo, standingsService)
	adminService := admin.NewAdminService(firestoreClient, firebaseApp, resendService)
	statsService := stats.NewStatsService(firestoreClient)

	router := gin.Default()

	if allowOrigins != "" {
		config := cors.DefaultConfig()
		config.AllowOrigins = strings.Split(allowOrigins, ",")
		config.AllowCredentials = true
		config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}
		router.Use(cors.New(config))
	}

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(auth.AuthMiddleware(firebaseApp))

	matchesRouter := router.Group("/matches/v1")
	matchesRouter.Use(auth.AuthMiddleware(firebaseApp))

	// The trigger authenticates with a shared secret in the body, not a
	// Firebase token, so this group carries no middleware.
	standingsRouter := router.Group("/standings/v1")

	statsRouter := router.Group("/stats/v1")

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  adminRouter,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service: matchesService,
		Router:  matchesRouter,
	})

	standings.NewHTTPHandler(standings.HTTPOptions{
		Service: standingsService,
		Router:  standingsRouter,
		Secret:  standingsSecret,
	})

	stats.NewHTTPHandler(stats.HTTPOptions{
		Service: statsService,
		Router:  statsRouter,
	})

	log.Fatal(router.Run(":" + port))
}
