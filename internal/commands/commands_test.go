package commands_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/devserver"
	"github.com/stretchr/testify/require"
)

// setupTestEnv serves the development fixture and returns a client for it.
func setupTestEnv(t *testing.T) *dataset.Client {
	t.Helper()
	fx, err := devserver.DefaultFixture()
	require.NoError(t, err)
	srv := httptest.NewServer(devserver.New(fx, nil))
	t.Cleanup(srv.Close)

	client, err := dataset.NewClient(dataset.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func fetchSchemaOf(t *testing.T, c *dataset.Client, endpoint string) *dataset.Response {
	t.Helper()
	resp, err := c.Fetch(context.Background(), endpoint, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Interactive)
	return resp
}
