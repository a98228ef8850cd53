package flag

import "github.com/elC0mpa/gcp-bill-doctor/model"

type service struct{}

type FlagService interface {
	GetParsedFlags() (model.Flags, error)
	PrintUsage()
}
