package api

import "storekit/commerce-api/model"

// userResponse is the sanitized projection of an account. Password
// hashes and refresh tokens never leave the server.
type userResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullname"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
	IsAdmin    bool   `json:"isAdmin"`
	IsVerified bool   `json:"isVerified"`
}

func sanitizeUser(u *model.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		IsAdmin:    u.IsAdmin,
		IsVerified: u.IsVerified,
	}
}

func sanitizeUsers(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, sanitizeUser(&users[i]))
	}

	return out
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    string `json:"parentCategory,omitempty"`
}

func categoryView(cat *model.Category) categoryResponse {
	return categoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		Image:       cat.Image,
		ParentID:    cat.ParentID,
	}
}

// categoryRef is the denormalized {id, name} snapshot embedded in
// product responses.
type categoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Stock       int               `json:"stock"`
	Images      model.StringSlice `json:"images"`
	IsActive    bool              `json:"isActive"`
	Category    categoryRef       `json:"category"`
}
