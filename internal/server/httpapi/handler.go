// Package httpapi is the JSON-over-HTTP boundary of the directory service.
// Handlers decode and validate requests, call the services and map their
// sentinel errors onto status codes; they hold no state of their own.
package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// now is a seam for tests.
var now = time.Now

type Handler struct {
	freelancers *services.FreelancerService
	clients     *services.ClientService
	jobs        *services.JobService
	auth        *services.AuthService
	debug       *services.DebugService
	logger      logging.Logger
	validate    *validator.Validate
}

func NewHandler(
	fs *services.FreelancerService,
	cs *services.ClientService,
	js *services.JobService,
	as *services.AuthService,
	ds *services.DebugService,
	logger logging.Logger,
) *Handler {
	return &Handler{
		freelancers: fs,
		clients:     cs,
		jobs:        js,
		auth:        as,
		debug:       ds,
		logger:      logger.With("module", "http"),
		validate:    newValidator(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handler) CreateFreelancer(w http.ResponseWriter, r *http.Request) {
	var req freelancerRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.writeError(w, r, err, "Failed to create freelancer profile")
		return
	}

	if err := h.freelancers.Register(r.Context(), req.model()); err != nil {
		h.writeError(w, r, err, "Failed to create freelancer profile")
		return
	}

	jsonOK(w, map[string]any{"success": true, "message": "Freelancer profile created successfully"})
}

func (h *Handler) CategoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.freelancers.CategoryCounts(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch category counts")
		return
	}

	jsonOK(w, map[string]any{"categories": counts})
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.writeError(w, r, err, "Failed to create client profile")
		return
	}

	if err := h.clients.Register(r.Context(), req.model()); err != nil {
		h.writeError(w, r, err, "Failed to create client profile")
		return
	}

	jsonOK(w, map[string]any{"success": true, "message": "Client profile created successfully"})
}

func (h *Handler) PostJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.writeError(w, r, err, "Failed to post job")
		return
	}

	id, err := h.jobs.Post(r.Context(), req.model())
	if err != nil {
		h.writeError(w, r, err, "Failed to post job")
		return
	}

	jsonOK(w, map[string]any{"success": true, "jobId": id, "message": "Job posted successfully"})
}

func (h *Handler) FeaturedJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.Featured(r.Context(), services.DefaultFeaturedLimit)
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch featured jobs")
		return
	}

	jsonOK(w, map[string]any{"jobs": jobs})
}

func (h *Handler) ClientJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ByClient(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch client jobs")
		return
	}

	jsonOK(w, map[string]any{"jobs": jobs})
}

type userView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	MobileNumber    string `json:"mobileNumber"`
	Country         string `json:"country"`
	UserType        string `json:"userType"`
	ProfileComplete bool   `json:"profileComplete"`
	Avatar          string `json:"avatar"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.writeError(w, r, err, "Login failed - server error")
		return
	}

	res, err := h.auth.Login(r.Context(), req.MobileNumber, req.Password)
	if err != nil {
		h.writeError(w, r, err, loginFailure(err))
		return
	}

	mobile := res.User.Mobile()
	if mobile == "" {
		mobile = req.MobileNumber
	}

	jsonOK(w, map[string]any{
		"success": true,
		"user": userView{
			ID:              res.User.UserID(),
			Name:            res.User.Name(),
			Email:           res.User.Email(),
			MobileNumber:    mobile,
			Country:         res.User.Country(),
			UserType:        res.User.UserType,
			ProfileComplete: true,
			Avatar:          common.DefaultAvatarURL,
		},
		"token": res.Token,
	})
}

func (h *Handler) CheckMobile(w http.ResponseWriter, r *http.Request) {
	var req checkMobileRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.writeError(w, r, err, "Failed to check mobile number")
		return
	}

	exists, userType, err := h.auth.CheckMobile(r.Context(), req.MobileNumber)
	if err != nil {
		h.writeError(w, r, err, "Failed to check mobile number")
		return
	}

	var ut *string
	if exists {
		ut = &userType
	}
	jsonOK(w, map[string]any{"exists": exists, "userType": ut})
}

func (h *Handler) AllData(w http.ResponseWriter, r *http.Request) {
	recs, err := h.debug.AllData(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch database data")
		return
	}
	if recs == nil {
		recs = []kv.Record{}
	}

	jsonOK(w, map[string]any{
		"records":    recs,
		"totalCount": len(recs),
		"timestamp":  now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) InitDemoData(w http.ResponseWriter, r *http.Request) {
	out, err := h.debug.InitDemoData(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to create demo data")
		return
	}

	if out.Created {
		jsonOK(w, map[string]any{
			"success":      true,
			"message":      "Demo data created successfully",
			"demoAccounts": out.Accounts,
		})
		return
	}

	body := map[string]any{
		"message":     "Demo data already exists - " + out.Reason,
		"freelancers": out.Freelancers,
		"clients":     out.Clients,
	}
	if out.FreelancerMobiles != nil {
		body["existingFreelancerMobiles"] = out.FreelancerMobiles
	}
	if out.ClientMobiles != nil {
		body["existingClientMobiles"] = out.ClientMobiles
	}
	jsonOK(w, body)
}

func (h *Handler) ForceDemoData(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.debug.ForceDemoData(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to force create demo data")
		return
	}

	jsonOK(w, map[string]any{
		"success":      true,
		"message":      "Demo data force created",
		"demoAccounts": accounts,
	})
}

func (h *Handler) MobileCheck(w http.ResponseWriter, r *http.Request) {
	all, err := h.debug.MobileCheck(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to check mobiles")
		return
	}

	jsonOK(w, map[string]any{
		"allMobiles": all,
		"totalUsers": len(all),
		"timestamp":  now().UTC().Format(time.RFC3339Nano),
	})
}
