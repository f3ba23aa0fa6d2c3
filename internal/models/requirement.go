package models

type RequirementProfile struct {
	MustHaveSkills   []string `json:"must_have_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	ExperienceLevel  string   `json:"experience_level"`
	Qualifications   string   `json:"qualifications"`
	PreferredDomains []string `json:"preferred_domains"`

	// RawSummary is the unparsed model output the profile was built from.
	RawSummary string `json:"raw_summary"`
}
