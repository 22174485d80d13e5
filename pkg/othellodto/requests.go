package othellodto

type PlayRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
