package resend

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	resend "github.com/resend/resend-go/v2"
)

// Service sends access mails and maintains the allowed-users list on
// tournament secret documents.
type Service struct {
	firebaseClient *firestore.Client
	rebaseClient   *resend.Client
	hostURL        string
}

// NewService creates a new empty service.
func NewService(firestoreClient *firestore.Client, hostURL string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		firebaseClient: firestoreClient,
		rebaseClient:   resend.NewClient(resendKey),
		hostURL:        hostURL,
	}
}

func (s Service) SendMail(ctx context.Context, request AccessRequest, accessCode string) error {
	body := getEmailTemplate(fmt.Sprintf("%s/get-access/%s", s.hostURL, accessCode))
	params := &resend.SendEmailRequest{
		From:    "scoring@courtside.app",
		To:      []string{request.Email},
		Subject: "Your scoring access link",
		Html:    body,
	}

	_, err := s.rebaseClient.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send mail request: %v", err)
		return err
	}
	return nil
}

// GrantAccess adds the user to the tournament's allowed scorers inside
// a transaction, so concurrent grants cannot drop each other.
func (s Service) GrantAccess(ctx context.Context, tournamentID, userID string) error {
	docRef := s.firebaseClient.Collection("tournamentSecrets").Doc(tournamentID)

	err := grantAccessToDoc(ctx, s, docRef, userID)
	if err != nil {
		log.Printf("Failed to update document: %v", err)
		return err
	}

	return nil
}

func grantAccessToDoc(ctx context.Context, s Service, docRef *firestore.DocumentRef, userID string) error {
	err := s.firebaseClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var allowedUsers []string
		if data, err := doc.DataAt("allowedUsers"); err == nil {
			if users, ok := data.([]interface{}); ok {
				for _, user := range users {
					if userStr, ok := user.(string); ok {
						allowedUsers = append(allowedUsers, userStr)
					}
				}
			}
		}

		for _, user := range allowedUsers {
			if user == userID {
				// User already has access, nothing to update.
				return nil
			}
		}

		updatedUsers := append(allowedUsers, userID)
		return tx.Update(docRef, []firestore.Update{
			{Path: "allowedUsers", Value: updatedUsers},
		})
	})
	return err
}

func getEmailTemplate(url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
    <div>
        <h2>Hello,</h2>
        <p>You have been granted scoring access. Click the link below to activate it:</p>
        <a href="%s">Activate scoring access</a>
        <p>CourtSide League</p>
    </div>
</body>
</html>`, url)
}
