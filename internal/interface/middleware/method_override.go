package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// overrideField is the hidden form field HTML forms use to simulate verbs
// they cannot express.
const overrideField = "_method"

// MethodOverride normalizes the effective request verb before routing.
// A POST carrying _method=PUT|DELETE|PATCH is dispatched as that verb; any
// other value is logged and the request proceeds as a plain POST.
//
// It wraps the whole router because route matching must see the effective
// verb, not the transport one.
func MethodOverride(next http.Handler, logger *logrus.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if v := r.PostFormValue(overrideField); v != "" {
				switch m := strings.ToUpper(strings.TrimSpace(v)); m {
				case http.MethodPut, http.MethodDelete, http.MethodPatch:
					logger.WithFields(logrus.Fields{"method": m, "path": r.URL.Path}).Info("request method overridden")
					r.Method = m
				default:
					logger.WithFields(logrus.Fields{"_method": v, "path": r.URL.Path}).Warn("invalid _method value received")
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
