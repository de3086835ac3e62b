package dto

// PageQuery 分页查询参数
type PageQuery struct {
	Page  int `form:"page"`  // 可选：页码，不传默认为1
	Limit int `form:"limit"` // 可选：每页数量，不传默认为10, 上限100
}

// GetPage 获取页码
func (p *PageQuery) GetPage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// GetLimit 获取每页数量
func (p *PageQuery) GetLimit() int {
	if p.Limit < 1 {
		return 10
	}
	if p.Limit > 100 {
		return 100
	}
	return p.Limit
}

// GetOffset 获取偏移量
func (p *PageQuery) GetOffset() int {
	return (p.GetPage() - 1) * p.GetLimit()
}

// IDParam ID参数
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}
