package api

import gonanoid "github.com/matoous/go-nanoid/v2"

// Record ids share one alphabet with validators.IDValidator.
const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func newID() (string, error) {
	return gonanoid.Generate(idCharset, 16)
}
