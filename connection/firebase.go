package connection

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type Firebase struct {
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// FBConnection initializes Firestore and FCM from a service account key file.
func FBConnection(ctx context.Context, serviceAccountKeyPath string) (*Firebase, error) {
	opt := option.WithCredentialsFile(serviceAccountKeyPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %w", err)
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}
	msg, err := app.Messaging(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &Firebase{Firestore: fs, Messaging: msg}, nil
}

func (f *Firebase) Close() error {
	return f.Firestore.Close()
}
