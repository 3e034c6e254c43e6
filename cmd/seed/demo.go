package main

import "job-copilot-backend/internal/domain"

func demoApp(id, company, role string, status domain.Status, date, logo, location, salary, via string) domain.Application {
	return domain.Application{
		ID: id,
		JobRef: domain.JobRef{
			Company:  company,
			Role:     role,
			Logo:     logo,
			Location: location,
			Salary:   salary,
		},
		AppliedDate: date,
		Status:      status,
		AppliedVia:  via,
	}
}

// demoApplications covers every status of the vocabulary once
func demoApplications() []domain.Application {
	return []domain.Application{
		demoApp("1", "Google", "Senior Frontend Engineer", domain.StatusInterview, "2024-01-15", "🔍", "Mountain View, CA", "$150k - $200k", "Company Website"),
		demoApp("2", "Stripe", "React Developer", domain.StatusSubmitted, "2024-01-14", "💳", "Remote", "$130k - $160k", "LinkedIn"),
		demoApp("3", "Netflix", "Frontend Architect", domain.StatusOnsiteInterview, "2024-01-12", "🎬", "Los Gatos, CA", "$180k - $250k", "Referral"),
		demoApp("4", "Spotify", "UI Engineer", domain.StatusNotSubmitted, "2024-01-10", "🎵", "New York, NY", "$120k - $150k", "Indeed"),
		demoApp("5", "Airbnb", "Frontend Engineer", domain.StatusOffer, "2024-01-08", "🏠", "San Francisco, CA", "$160k - $210k", "Company Website"),
		demoApp("6", "Meta", "Software Engineer (Frontend)", domain.StatusRejectedInterview, "2024-01-05", "👥", "Menlo Park, CA", "$140k - $180k", "LinkedIn"),
		demoApp("7", "Vercel", "Developer Relations", domain.StatusInitialResponse, "2024-01-13", "▲", "Remote", "$130k - $170k", "Twitter"),
		demoApp("8", "Figma", "Frontend Engineer", domain.StatusDeclined, "2024-01-11", "🎨", "San Francisco, CA", "$140k - $190k", "AngelList"),
	}
}
