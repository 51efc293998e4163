package admin

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	auth "firebase.google.com/go/v4/auth"
	"github.com/samborkent/uuidv7"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gin-gonic/gin"
	access "github.com/courtside/league-sync/pkg/accessCode"
	resend "github.com/courtside/league-sync/repos/resend"
)

var ErrInvalidAccessCode = errors.New("not valid access code")

type AdminService struct {
	firestoreClient *firestore.Client
	firebaseApp     *firebase.App
	resendService   *resend.Service
}

func NewAdminService(firestoreClient *firestore.Client, firebaseApp *firebase.App, resendService *resend.Service) *AdminService {
	return &AdminService{
		firestoreClient: firestoreClient,
		firebaseApp:     firebaseApp,
		resendService:   resendService,
	}
}

// ClaimAccess mails the requester a scoring access link for the
// tournament. The secret document is created on first claim.
func (s *AdminService) ClaimAccess(c *gin.Context, request resend.AccessRequest) error {
	token := c.MustGet("token").(*auth.Token)

	secretString, err := s.ensureSecret(c, request.TournamentID)
	if err != nil {
		log.Printf("Failed to resolve tournament secret: %v\n", err)
		return err
	}

	code := access.GenerateCode(request.TournamentID, secretString)

	err = s.resendService.SendMail(c, request, code)
	if err != nil {
		return err
	}

	// The grant outlives the request, so it must not hold the pooled
	// gin context.
	go s.resendService.GrantAccess(context.Background(), request.TournamentID, token.UID)
	return nil
}

// AddTournamentAccess redeems an access code: the embedded secret must
// match the tournament's secret document before the caller's uid is
// added to the allowed scorers.
func (s *AdminService) AddTournamentAccess(c *gin.Context, tournamentID, secret string) error {
	token := c.MustGet("token").(*auth.Token)

	doc, err := s.firestoreClient.Collection("tournamentSecrets").Doc(tournamentID).Get(c)
	if err != nil {
		log.Printf("Failed to get tournament secret from Firestore: %v\n", err)
		return err
	}

	data := doc.Data()
	fieldValue, ok := data["secret"]
	if !ok {
		log.Printf("Field does not exist in the document.")
	}

	secretString, ok := fieldValue.(string)
	if !ok {
		log.Printf("Failed to convert field value to string.")
	}

	if secret != secretString {
		return ErrInvalidAccessCode
	}

	return s.resendService.GrantAccess(c, tournamentID, token.UID)
}

// ensureSecret reads the tournament's secret, minting one inside a
// transaction on first claim so concurrent claims agree on it.
func (s *AdminService) ensureSecret(c *gin.Context, tournamentID string) (string, error) {
	docRef := s.firestoreClient.Collection("tournamentSecrets").Doc(tournamentID)

	var secretString string
	err := s.firestoreClient.RunTransaction(c, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}

			secretString = uuidv7.New().String()
			return tx.Set(docRef, map[string]interface{}{
				"secret": secretString,
			})
		}

		data := doc.Data()
		fieldValue, ok := data["secret"]
		if !ok {
			log.Printf("Field does not exist in the document.")
		}

		secretString, ok = fieldValue.(string)
		if !ok {
			log.Printf("Failed to convert field value to string.")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return secretString, nil
}
