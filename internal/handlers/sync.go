package handlers

import (
	"net/http"
)

// Sync handles POST /api/super/sync  (super admin only)
//
// The reconciler already runs on a timer; this lets an operator push the
// local journal to the remote store right after connectivity returns.
//
// LEARNING NOTE — partial progress
// The reconciler stops at the first record the remote store refuses, so
// the report can show some entries replayed, one failed and the rest
// still pending. That is still a 200: what was replayed is durable and
// the next run picks up the rest.
func (s *Server) Sync(w http.ResponseWriter, r *http.Request) {
	if s.Syncer == nil {
		respondError(w, http.StatusConflict, "no remote store is configured")
		return
	}
	report, err := s.Syncer.Run(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, report)
}
