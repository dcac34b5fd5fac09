package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iqbalShafiq/word-battle-game/internal/api/request"
	"github.com/iqbalShafiq/word-battle-game/internal/api/response"
	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/services/scoring"
	"github.com/iqbalShafiq/word-battle-game/internal/services/words"
)

// WordsHandler handles offline word checking
type WordsHandler struct {
	words   *words.Service
	scoring *scoring.Service
}

// NewWordsHandler creates a new words handler
func NewWordsHandler(wordsService *words.Service, scoringService *scoring.Service) *WordsHandler {
	return &WordsHandler{
		words:   wordsService,
		scoring: scoringService,
	}
}

// Validate handles POST /api/words/validate. It reports whether a word would
// score, without the live-round bonuses.
func (h *WordsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Word == "" {
		WriteError(w, NewInvalidRequestError("word is required"))
		return
	}

	if !h.words.IsLoaded() {
		WriteError(w, model.ErrDictionaryNotLoaded)
		return
	}

	normalized := words.Normalize(req.Word)

	var valid bool
	if len(req.Letters) > 0 {
		valid = h.words.Validate(normalized, req.Letters)
	} else {
		valid = len(normalized) >= words.MinWordLength && h.words.IsInDictionary(normalized)
	}

	score := 0
	if valid {
		score = h.scoring.ScoreWord(normalized)
	}

	response.JSON(w, http.StatusOK, response.ValidateWord{
		Word:  normalized,
		Valid: valid,
		Score: score,
	})
}
