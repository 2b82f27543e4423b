package service

import "github.com/padel-tracker/padel/shared/errors"

var errPlayerNotFound = errors.NotFound("Player not found")
