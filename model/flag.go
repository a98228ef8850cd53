package model

// Flags holds every parsed CLI flag for the reporting tool
type Flags struct {
	// Actions
	ListAccounts bool
	ListProjects bool
	Costs        bool
	CheckExport  bool

	// Cost query options
	BillingAccount string
	Project        string
	StartDate      string
	EndDate        string
	GroupBy        GroupBy
	Format         Format

	// Output options
	Chart bool
	Debug bool
}

// HasAction reports whether any of the action flags was given
func (f Flags) HasAction() bool {
	return f.ListAccounts || f.ListProjects || f.Costs || f.CheckExport
}
