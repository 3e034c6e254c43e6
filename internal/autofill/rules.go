package autofill

import (
	"regexp"
	"strings"

	"job-copilot-backend/internal/domain"
)

// Provenance labels attached to mapped values
const (
	SourcePersonalInfo     = "Profile: Personal Info"
	SourceLatestExperience = "Profile: Latest Experience"
	SourceSkills           = "Profile: Skills Section"
	SourceProjects         = "Profile: Projects"
	SourceGenerated        = "AI Generated"
	SourceCalculated       = "Calculated from Profile"
	SourceEstimated        = "Estimated"
)

// Resolution is what a rule produces for one field
type Resolution struct {
	Value      string
	Confidence float64
	Source     string
}

// Rule maps a family of field ids/labels to a profile accessor.
// Aliases are compared after normalize().
type Rule struct {
	Name    string
	Aliases []string
	Resolve func(p *domain.Profile) Resolution
}

// direct builds a 1:1 copy rule: the fixed confidence applies only when the
// profile value is non-empty.
func direct(confidence float64, source string, get func(p *domain.Profile) string) func(p *domain.Profile) Resolution {
	return func(p *domain.Profile) Resolution {
		v := strings.TrimSpace(get(p))
		if v == "" {
			return Resolution{}
		}
		return Resolution{Value: v, Confidence: confidence, Source: source}
	}
}

func latestExperience(p *domain.Profile) domain.Experience {
	if len(p.Experience) == 0 {
		return domain.Experience{}
	}
	return p.Experience[0]
}

var whitespace = regexp.MustCompile(`\s`)

func resolveLinkedIn(p *domain.Profile) Resolution {
	if v := strings.TrimSpace(p.Personal.LinkedIn); v != "" {
		return Resolution{Value: v, Confidence: 0.95, Source: SourcePersonalInfo}
	}
	name := strings.TrimSpace(p.Personal.Name)
	if name == "" {
		return Resolution{}
	}
	slug := whitespace.ReplaceAllString(strings.ToLower(name), "-")
	return Resolution{Value: "linkedin.com/in/" + slug, Confidence: 0.6, Source: SourceGenerated}
}

func resolvePortfolio(p *domain.Profile) Resolution {
	if len(p.Projects) > 0 {
		if v := strings.TrimSpace(p.Projects[0].URL); v != "" {
			return Resolution{Value: v, Confidence: 0.88, Source: SourceProjects}
		}
	}
	if v := strings.TrimSpace(p.Personal.Website); v != "" {
		return Resolution{Value: v, Confidence: 0.88, Source: SourcePersonalInfo}
	}
	return Resolution{}
}

func resolveYearsOfExperience(p *domain.Profile) Resolution {
	years := TotalYears(p.Experience)
	if years > 0 {
		return Resolution{Value: YearsBucket(years), Confidence: 0.85, Source: SourceCalculated}
	}
	return Resolution{Value: YearsBucket(years), Confidence: 0.4, Source: SourceEstimated}
}

func resolveSkills(p *domain.Profile) Resolution {
	skills := make([]string, 0, len(p.Skills))
	seen := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		skills = append(skills, s)
	}
	if len(skills) == 0 {
		return Resolution{}
	}
	return Resolution{Value: strings.Join(skills, ", "), Confidence: 0.90, Source: SourceSkills}
}

// DefaultRules is the lookup table used by Map
var DefaultRules = []Rule{
	{
		Name:    "fullName",
		Aliases: []string{"fullname", "name", "yourname", "candidatename", "legalname"},
		Resolve: direct(0.98, SourcePersonalInfo, func(p *domain.Profile) string { return p.Personal.Name }),
	},
	{
		Name:    "email",
		Aliases: []string{"email", "emailaddress", "mail", "contactemail"},
		Resolve: direct(0.99, SourcePersonalInfo, func(p *domain.Profile) string { return p.Personal.Email }),
	},
	{
		Name:    "phone",
		Aliases: []string{"phone", "phonenumber", "telephone", "mobile", "mobilenumber", "tel"},
		Resolve: direct(0.95, SourcePersonalInfo, func(p *domain.Profile) string { return p.Personal.Phone }),
	},
	{
		Name:    "location",
		Aliases: []string{"location", "city", "currentlocation", "address"},
		Resolve: direct(0.93, SourcePersonalInfo, func(p *domain.Profile) string { return p.Personal.Location }),
	},
	{
		Name:    "linkedin",
		Aliases: []string{"linkedin", "linkedinurl", "linkedinprofile"},
		Resolve: resolveLinkedIn,
	},
	{
		Name:    "portfolio",
		Aliases: []string{"portfolio", "portfoliowebsite", "website", "personalwebsite", "portfoliourl"},
		Resolve: resolvePortfolio,
	},
	{
		Name:    "currentCompany",
		Aliases: []string{"currentcompany", "currentemployer", "employer"},
		Resolve: direct(0.92, SourceLatestExperience, func(p *domain.Profile) string { return latestExperience(p).Company }),
	},
	{
		Name:    "currentTitle",
		Aliases: []string{"currenttitle", "jobtitle", "currentjobtitle", "currentposition"},
		Resolve: direct(0.92, SourceLatestExperience, func(p *domain.Profile) string { return latestExperience(p).Title }),
	},
	{
		Name:    "experience",
		Aliases: []string{"experience", "yearsofexperience", "yearsexperience", "totalexperience"},
		Resolve: resolveYearsOfExperience,
	},
	{
		Name:    "skills",
		Aliases: []string{"skills", "keyskills", "technicalskills", "skillset"},
		Resolve: resolveSkills,
	},
}
