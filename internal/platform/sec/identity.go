// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the authenticated subject of a request.
//
// It is resolved once by the authorization middleware and read by handlers
// from the request context. Owner fields of every record are stamped from
// UserID, never from client input.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
