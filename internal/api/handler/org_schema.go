package handler

type treeNodeResponse struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	DisplayName string             `json:"display_name,omitempty"`
	Role        string             `json:"role"`
	Program     string             `json:"program,omitempty"`
	Sites       []string           `json:"sites,omitempty"`
	Children    []treeNodeResponse `json:"children"`
}

type updateAttributesRequest struct {
	Program string   `json:"program"`
	Sites   []string `json:"sites"`
}

type updateAttributesResponse struct {
	UserID        string `json:"user_id"`
	CascadedNodes int    `json:"cascaded_nodes"`
}

type programSitesResponse struct {
	Program string   `json:"program"`
	Sites   []string `json:"sites"`
}
