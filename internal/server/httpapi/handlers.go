package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/dmitrijs2005/azyrnyx/internal/server/services"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type sessionResponse struct {
	Token        string `json:"token"`
	ShardBalance int64  `json:"shardBalance"`
}

type balanceRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type balanceResponse struct {
	ShardBalance int64 `json:"shardBalance"`
}

type redeemRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	Code     string `json:"code"`
}

type claimRequest struct {
	Username string      `json:"username"`
	Token    string      `json:"token"`
	QuestID  string      `json:"questId"`
	Reward   json.Number `json:"reward"`
}

type grantResponse struct {
	Message      string `json:"message"`
	ShardBalance int64  `json:"shardBalance"`
}

type addCodeRequest struct {
	AdminSecret string      `json:"adminSecret"`
	Code        string      `json:"code"`
	Amount      json.Number `json:"amount"`
	Mode        string      `json:"mode"`
	ExpiresAt   *time.Time  `json:"expiresAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type codeView struct {
	Code       string     `json:"code"`
	Amount     int64      `json:"amount"`
	Mode       string     `json:"mode"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	ConsumedBy string     `json:"consumedBy,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type codesResponse struct {
	Codes []codeView `json:"codes"`
}

func toCodeView(c models.RedeemCode) codeView {
	return codeView{
		Code:       c.Code,
		Amount:     c.Amount,
		Mode:       string(c.Mode),
		ExpiresAt:  c.ExpiresAt,
		ConsumedBy: c.ConsumedBy,
		CreatedAt:  c.CreatedAt,
	}
}

// tokenOf prefers the token in the body and falls back to the bearer header.
func tokenOf(r *http.Request, body string) string {
	if body != "" {
		return body
	}
	return bearerToken(r)
}

func (s *HTTPServer) signupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		session, err := s.svc.Auth.Signup(r.Context(), req.Username, req.Secret)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{Token: session.Token, ShardBalance: session.ShardBalance})
	}
}

func (s *HTTPServer) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		session, err := s.svc.Auth.Login(r.Context(), req.Username, req.Secret)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{Token: session.Token, ShardBalance: session.ShardBalance})
	}
}

func (s *HTTPServer) balanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req balanceRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		balance, err := s.svc.Auth.Balance(r.Context(), req.Username, tokenOf(r, req.Token))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, balanceResponse{ShardBalance: balance})
	}
}

func (s *HTTPServer) balanceByNameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balance, err := s.svc.Auth.Balance(r.Context(), r.PathValue("username"), bearerToken(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, balanceResponse{ShardBalance: balance})
	}
}

func (s *HTTPServer) redeemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req redeemRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		res, err := s.svc.Redemption.Redeem(r.Context(), req.Username, tokenOf(r, req.Token), req.Code)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, grantResponse{Message: res.Message(), ShardBalance: res.NewBalance})
	}
}

func (s *HTTPServer) claimQuestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req claimRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		reward, err := wholeNumber(req.Reward)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		claim, err := s.svc.Quests.ClaimQuest(r.Context(), req.Username, tokenOf(r, req.Token), req.QuestID, reward)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, grantResponse{Message: claim.Message(), ShardBalance: claim.NewBalance})
	}
}

func (s *HTTPServer) addCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCodeRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		secret := req.AdminSecret
		if secret == "" {
			secret = r.Header.Get(common.AdminSecretHeaderName)
		}

		var amount int64
		if req.Amount != "" {
			v, err := req.Amount.Int64()
			if err != nil {
				s.writeError(w, r, fmt.Errorf("%w: amount must be a whole number", common.ErrInvalidInput))
				return
			}
			amount = v
		}

		c, err := s.svc.Admin.AddCode(r.Context(), secret, services.NewCode{
			Code:      req.Code,
			Amount:    amount,
			Mode:      req.Mode,
			ExpiresAt: req.ExpiresAt,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, messageResponse{
			Message: fmt.Sprintf("Code %s grants %d Aether Shards", c.Code, c.Amount),
		})
	}
}

func (s *HTTPServer) listCodesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := s.svc.Admin.ListCodes(r.Context(), r.Header.Get(common.AdminSecretHeaderName))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		resp := codesResponse{Codes: make([]codeView, 0, len(codes))}
		for _, c := range codes {
			resp.Codes = append(resp.Codes, toCodeView(c))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
