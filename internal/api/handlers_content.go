package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanders-dream/compassionate-care-api/internal/content"
)

func listOptions(r *http.Request, publicOnly bool) content.ListOptions {
	return content.ListOptions{
		PublishedOnly: publicOnly,
		Limit:         queryInt(r, "limit", 0),
		Offset:        queryInt(r, "offset", 0),
	}
}

// Blog posts

func createBlogPostHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BlogPostRequest
		if !decodeValid(w, r, &req) {
			return
		}

		post, err := svc.CreateBlogPost(r.Context(), content.BlogPost{
			Slug:          req.Slug,
			Title:         req.Title,
			Excerpt:       req.Excerpt,
			Body:          req.Body,
			CoverImageURL: req.CoverImageURL,
			Published:     req.Published,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBlogPostResponse(post))
	}
}

func listBlogPostsHandler(svc *content.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListBlogPosts(r.Context(), listOptions(r, publicOnly))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]BlogPostResponse, 0, len(posts))
		for i := range posts {
			out = append(out, toBlogPostResponse(&posts[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBlogPostHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		post, err := svc.GetBlogPost(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBlogPostResponse(post))
	}
}

func getBlogPostBySlugHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := svc.GetBlogPostBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBlogPostResponse(post))
	}
}

func updateBlogPostHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req BlogPostRequest
		if !decodeValid(w, r, &req) {
			return
		}

		post, err := svc.UpdateBlogPost(r.Context(), content.BlogPost{
			ID:            id,
			Slug:          req.Slug,
			Title:         req.Title,
			Excerpt:       req.Excerpt,
			Body:          req.Body,
			CoverImageURL: req.CoverImageURL,
			Published:     req.Published,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBlogPostResponse(post))
	}
}

func deleteBlogPostHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteBlogPost(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Team members

func createTeamMemberHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamMemberRequest
		if !decodeValid(w, r, &req) {
			return
		}

		m, err := svc.CreateTeamMember(r.Context(), content.TeamMember{
			Name:         req.Name,
			Role:         req.Role,
			Bio:          req.Bio,
			PhotoURL:     req.PhotoURL,
			DisplayOrder: req.DisplayOrder,
			Active:       activeOrDefault(req.Active),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, m)
	}
}

func listTeamMembersHandler(svc *content.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.ListTeamMembers(r.Context(), listOptions(r, publicOnly))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, members)
	}
}

func getTeamMemberHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		m, err := svc.GetTeamMember(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, m)
	}
}

func updateTeamMemberHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req TeamMemberRequest
		if !decodeValid(w, r, &req) {
			return
		}

		m, err := svc.UpdateTeamMember(r.Context(), content.TeamMember{
			ID:           id,
			Name:         req.Name,
			Role:         req.Role,
			Bio:          req.Bio,
			PhotoURL:     req.PhotoURL,
			DisplayOrder: req.DisplayOrder,
			Active:       activeOrDefault(req.Active),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, m)
	}
}

func deleteTeamMemberHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteTeamMember(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Practice services

func createPracticeServiceHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PracticeServiceRequest
		if !decodeValid(w, r, &req) {
			return
		}

		ps, err := svc.CreatePracticeService(r.Context(), content.PracticeService{
			Name:         req.Name,
			Description:  req.Description,
			IconName:     req.IconName,
			DisplayOrder: req.DisplayOrder,
			Active:       activeOrDefault(req.Active),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ps)
	}
}

func listPracticeServicesHandler(svc *content.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := svc.ListPracticeServices(r.Context(), listOptions(r, publicOnly))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, services)
	}
}

func updatePracticeServiceHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req PracticeServiceRequest
		if !decodeValid(w, r, &req) {
			return
		}

		ps, err := svc.UpdatePracticeService(r.Context(), content.PracticeService{
			ID:           id,
			Name:         req.Name,
			Description:  req.Description,
			IconName:     req.IconName,
			DisplayOrder: req.DisplayOrder,
			Active:       activeOrDefault(req.Active),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ps)
	}
}

func deletePracticeServiceHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeletePracticeService(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Insurance providers

func createInsuranceProviderHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InsuranceProviderRequest
		if !decodeValid(w, r, &req) {
			return
		}

		p, err := svc.CreateInsuranceProvider(r.Context(), content.InsuranceProvider{
			Name:         req.Name,
			LogoURL:      req.LogoURL,
			DisplayOrder: req.DisplayOrder,
			Active:       activeOrDefault(req.Active),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

func listInsuranceProvidersHandler(svc *content.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers, err := svc.ListInsuranceProviders(r.Context(), listOptions(r, publicOnly))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, providers)
	}
}

func updateInsuranceProviderHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req InsuranceProviderRequest
		if !decodeValid(w, r, &req) {
			return
		}

		p, err := svc.UpdateInsuranceProvider(r.Context(), content.InsuranceProvider{
			ID:           id,
			Name:         req.Name,
			LogoURL:      req.LogoURL,
			DisplayOrder: req.DisplayOrder,
			Active:       activeOrDefault(req.Active),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

func deleteInsuranceProviderHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteInsuranceProvider(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Testimonials

func createTestimonialHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TestimonialRequest
		if !decodeValid(w, r, &req) {
			return
		}

		tm, err := svc.CreateTestimonial(r.Context(), content.Testimonial{
			Author:   req.Author,
			Quote:    req.Quote,
			Rating:   req.Rating,
			Approved: req.Approved,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, tm)
	}
}

func listTestimonialsHandler(svc *content.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := svc.ListTestimonials(r.Context(), listOptions(r, publicOnly))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, testimonials)
	}
}

func updateTestimonialHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req TestimonialRequest
		if !decodeValid(w, r, &req) {
			return
		}

		tm, err := svc.UpdateTestimonial(r.Context(), content.Testimonial{
			ID:       id,
			Author:   req.Author,
			Quote:    req.Quote,
			Rating:   req.Rating,
			Approved: req.Approved,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tm)
	}
}

func deleteTestimonialHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteTestimonial(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
