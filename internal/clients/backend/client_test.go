package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"field-service/internal/dto"
	"field-service/internal/entities"
	"field-service/pkg/contextkeys"
	apperrors "field-service/pkg/errors"
)

const orderPayload = `{
	"id": 321,
	"status": 4,
	"pendingIssueId": null,
	"financialRelease": {"released": true},
	"fats": [
		{"id_fat": 9, "tecnico": {"id": 12, "nome": "Ana"}, "statusFat": "4",
		 "descricaoProblema": "ruído", "numeroCiclos": 2}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, zap.NewNop())
}

func tokenCtx() context.Context {
	return context.WithValue(context.Background(), contextkeys.AuthTokenKey, "tok-123")
}

func TestFetchOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/os/321", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, orderPayload)
	})

	order, err := client.FetchOrder(tokenCtx(), 321)
	require.NoError(t, err)
	assert.Equal(t, int64(321), order.ID)
	assert.Equal(t, entities.OrderStatusInService, order.Status)
	require.Len(t, order.Fats, 1)
	assert.Equal(t, entities.FatInService, order.Fats[0].Status)
	assert.True(t, order.Fats[0].BelongsTo(12))
}

func TestFetchOrderNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"mensagem":"OS não encontrada"}`)
	})

	_, err := client.FetchOrder(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFetchOrderServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchOrder(context.Background(), 1)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.False(t, apiErr.HasMessage())
}

func TestRegisterOccurrence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/occurrences", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 55, body["id_os"])
		assert.Equal(t, "pausar atendimento", body["ocorrencia"])
		assert.Equal(t, "almoço", body["descricao_ocorrencia"])

		_, _ = io.WriteString(w, `{"mensagem":"Atendimento pausado"}`)
	})

	desc := "almoço"
	resp, err := client.RegisterOccurrence(tokenCtx(), dto.OccurrenceRequest{
		IDOS: 55, Ocorrencia: "pausar atendimento", DescricaoOcorrencia: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "Atendimento pausado", resp.Mensagem)
}

func TestRegisterOccurrenceOmitsEmptyDescription(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, present := body["descricao_ocorrencia"]
		assert.False(t, present)
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := client.RegisterOccurrence(context.Background(), dto.OccurrenceRequest{IDOS: 1, Ocorrencia: "iniciar deslocamento"})
	require.NoError(t, err)
	assert.Empty(t, resp.Mensagem)
}

func TestRegisterOccurrenceRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"mensagem":"  FAT sem dados obrigatórios "}`)
	})

	_, err := client.RegisterOccurrence(context.Background(), dto.OccurrenceRequest{IDOS: 1, Ocorrencia: "concluir os"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "FAT sem dados obrigatórios", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "/occurrences")
}

func TestRegisterOccurrenceNonJSONError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := client.RegisterOccurrence(context.Background(), dto.OccurrenceRequest{IDOS: 1, Ocorrencia: "concluir os"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.HasMessage())
}
