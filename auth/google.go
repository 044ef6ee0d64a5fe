package auth

import (
	"context"
	"errors"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// GoogleIdentity is what a verified federated login token resolves to.
type GoogleIdentity struct {
	UID   string
	Email string
	Name  string
}

// GoogleVerifier checks a federated login ID token. The firebase client
// is the production implementation; tests substitute a fake.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type firebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (GoogleVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &firebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.Audience != v.projectID {
		return nil, errors.New("invalid token audience")
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	if email == "" {
		return nil, errors.New("token carries no email")
	}
	return &GoogleIdentity{UID: token.UID, Email: email, Name: name}, nil
}
