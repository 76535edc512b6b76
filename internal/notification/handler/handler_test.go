package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"idrelay/internal/notification/ports/mocks"
	"idrelay/internal/notification/service"
	"idrelay/internal/secrets"
)

const usSigningSecret = "us-signing-secret"

type HandlerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	publisher *mocks.MockPublisher
	router    chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	pipeline, err := service.New(s.publisher, service.Config{})
	s.Require().NoError(err)

	secretStore := secrets.NewInMemoryStore(map[string]string{
		"idp/us/signing-key": usSigningSecret,
	})

	logger := slog.New(slog.DiscardHandler)
	h := New(pipeline, secretStore, logger)

	s.router = chi.NewRouter()
	h.Register(s.router)
}

func signEvent(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "idp",
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func (s *HandlerSuite) post(dc string, signature string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/webhook/"+dc, bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func mergeBody() map[string]any {
	return map[string]any{
		"eventName": "accountMerged",
		"accountRecord": map[string]any{
			"uid":              "123",
			"password":         "abc",
			"company":          "Acme",
			"city":             "X",
			"country":          "Y",
			"marketingConsent": true,
		},
	}
}

func (s *HandlerSuite) TestMergeEventDispatched() {
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	w := s.post("us", signEvent(s.T(), usSigningSecret), mergeBody())
	s.Equal(http.StatusAccepted, w.Code)

	var resp map[string]string
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("dispatched", resp["status"])
	s.Equal("merge", resp["kind"])
}

func (s *HandlerSuite) TestUnrecognizedEventDropped() {
	// Publisher must never be invoked.
	body := mergeBody()
	body["eventName"] = "somethingNew"

	w := s.post("us", signEvent(s.T(), usSigningSecret), body)
	s.Equal(http.StatusAccepted, w.Code)

	var resp map[string]string
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("dropped", resp["status"])
}

func (s *HandlerSuite) TestInvalidDataCenter() {
	w := s.post("xx", signEvent(s.T(), usSigningSecret), mergeBody())
	s.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]string
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("invalid_input", resp["error"])
}

func (s *HandlerSuite) TestDataCenterParsingIsCaseInsensitive() {
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	w := s.post("US", signEvent(s.T(), usSigningSecret), mergeBody())
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *HandlerSuite) TestMissingSignature() {
	w := s.post("us", "", mergeBody())
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestWrongSecretSignature() {
	w := s.post("us", signEvent(s.T(), "eu-signing-secret"), mergeBody())
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestMergeWithoutCredentialRejected() {
	body := mergeBody()
	record := body["accountRecord"].(map[string]any)
	delete(record, "password")

	w := s.post("us", signEvent(s.T(), usSigningSecret), body)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/webhook/us", bytes.NewReader([]byte("{not json")))
	req.Header.Set(SignatureHeader, signEvent(s.T(), usSigningSecret))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}
