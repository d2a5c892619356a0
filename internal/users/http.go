package users

import (
	"github.com/gin-gonic/gin"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/rest"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/services"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/shapes"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
)

// Register wires the users resource onto the given route group.
func Register(rg *gin.RouterGroup, db storage.DB) {
	repo := NewRepo(db)

	ct := &rest.Controller[domain.User]{
		Spec:        Spec,
		Create:      services.NewCreate[domain.User](repo),
		List:        services.NewList[domain.User](repo),
		Find:        services.NewFind[domain.User](repo),
		Update:      services.NewUpdate[domain.User](repo),
		Delete:      services.NewDelete[domain.User](repo),
		Shape:       shapes.User,
		CreateRules: CreateRules,
		UpdateRules: UpdateRules,
	}
	ct.Register(rg)
}
