package routehandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lakonic/noted/webutil"
)

// Suggester produces free-form suggestion text for a note.
type Suggester interface {
	Suggest(ctx context.Context, title, content string, tags []string) (string, error)
}

type SuggestionHandler struct {
	Suggester Suggester
}

func NewSuggestionHandler(suggester Suggester) *SuggestionHandler {
	return &SuggestionHandler{Suggester: suggester}
}

func (h *SuggestionHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if strings.TrimSpace(requestData.Title) == "" && strings.TrimSpace(requestData.Content) == "" {
		return webutil.ErrBadRequest("Title or content is required")
	}

	text, err := h.Suggester.Suggest(r.Context(), requestData.Title, requestData.Content, requestData.Tags)
	if err != nil {
		return webutil.ErrBadGatewayWrap("AI suggestion failed", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"suggestions": text})
	return nil
}
