// Package service contains the business logic.
//
// It sits between the handlers and the collaborators (session store,
// email sender), and drives one booking submission from token lookup to
// delivery.
package service
