package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil highlight service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingHighlightService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Highlight: &mockHighlightService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil highlight service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingHighlightService)
	})

	t.Run("highlight only is valid", func(t *testing.T) {
		ports := &Ports{
			Highlight: &mockHighlightService{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Highlight: &mockHighlightService{},
			Settings:  &mockSettingsService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Initialize(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &Ports{Highlight: &mockHighlightService{}})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	result := session.InitializeResult()
	require.NotNil(t, result)
	assert.Equal(t, "inkmark", result.ServerInfo.Name)
	assert.Equal(t, Version, result.ServerInfo.Version)
	assert.Contains(t, result.Instructions, "highlight_add")

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"highlight_add", "highlight_list", "highlight_pick",
		"highlight_set_color", "highlight_set_note", "highlight_remove",
	}, names)
}
