package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rahe01/StayVista/domain"
)

// KeyClaims carries the verified session claims through the request context.
type KeyClaims struct{}

func jsonResponse(object interface{}, writer http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		log.Println(err)
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writer.Write(resp)
}

func claimsFrom(req *http.Request) (*domain.Claims, bool) {
	claims, ok := req.Context().Value(KeyClaims{}).(*domain.Claims)
	return claims, ok
}
