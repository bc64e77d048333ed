package commands

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/allenday/qdrant-manager/internal/integrations/solr"
)

func newAdminServer(t *testing.T, existing string) (*solr.Client, *[]string) {
	t.Helper()
	var actions []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := r.URL.Query().Get("action")
		actions = append(actions, action)
		switch action {
		case "LIST":
			io.WriteString(w, `{"responseHeader":{"status":0},"collections":["`+existing+`"]}`)
		default:
			io.WriteString(w, `{"responseHeader":{"status":0}}`)
		}
	}))
	t.Cleanup(server.Close)

	return solr.NewClient(server.URL, "", "", time.Second), &actions
}

func TestEnsureCollectionExistingWithoutOverwrite(t *testing.T) {
	client, actions := newAdminServer(t, "docs")

	created, err := ensureCollection(context.Background(), client, "docs", 1, 1, "_default", false)
	if err != nil {
		t.Fatalf("Expected existing collection to be a warning, got error: %v", err)
	}
	if created {
		t.Error("Expected created=false for an existing collection")
	}
	if !reflect.DeepEqual(*actions, []string{"LIST"}) {
		t.Errorf("Expected only a LIST request, got %v", *actions)
	}
}

func TestEnsureCollectionOverwrite(t *testing.T) {
	oldDelay := deleteSettleDelay
	deleteSettleDelay = 0
	defer func() { deleteSettleDelay = oldDelay }()

	client, actions := newAdminServer(t, "docs")

	created, err := ensureCollection(context.Background(), client, "docs", 2, 1, "_default", true)
	if err != nil {
		t.Fatalf("ensureCollection failed: %v", err)
	}
	if !created {
		t.Error("Expected created=true after overwrite")
	}
	if !reflect.DeepEqual(*actions, []string{"LIST", "DELETE", "CREATE"}) {
		t.Errorf("Expected LIST, DELETE, CREATE, got %v", *actions)
	}
}

func TestEnsureCollectionNew(t *testing.T) {
	client, actions := newAdminServer(t, "other")

	created, err := ensureCollection(context.Background(), client, "docs", 1, 1, "_default", false)
	if err != nil {
		t.Fatalf("ensureCollection failed: %v", err)
	}
	if !created {
		t.Error("Expected created=true for a new collection")
	}
	if !reflect.DeepEqual(*actions, []string{"LIST", "CREATE"}) {
		t.Errorf("Expected LIST then CREATE, got %v", *actions)
	}
}
