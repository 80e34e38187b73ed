package verse

import (
	"errors"
	"net/http"
	"time"

	"github.com/taiwoajasa245/daily-verse-api/pkg/response"
)

type VerseHandler struct {
	selector *Selector
	now      func() time.Time
}

func NewVerseHandler(selector *Selector) VerseHandler {
	return VerseHandler{selector: selector, now: time.Now}
}

func (h *VerseHandler) GetDailyVerseHandler(w http.ResponseWriter, r *http.Request) {
	today := DateOf(h.now())

	verse, err := h.selector.ResolveForDate(r.Context(), today)
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			response.Error(w, http.StatusConflict, "Verse corpus exhausted", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to get daily verse", err.Error())
		return
	}

	response.Success(w, DailyVerseResponse{
		Date:      today.Format("2006-01-02"),
		Reference: verse.Ref(),
		KJV:       verse.TextKJV,
	}, "successfully")
}

func (h *VerseHandler) GetRandomVerseHandler(w http.ResponseWriter, r *http.Request) {
	verse, err := h.selector.Random(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(w, http.StatusNotFound, "No verses loaded", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to get random verse", err.Error())
		return
	}

	response.Success(w, RandomVerseResponse{
		Reference: verse.Ref(),
		KJV:       verse.TextKJV,
	}, "successfully")
}
