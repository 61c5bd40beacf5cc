// Package setting 提供设置服务单元测试
package setting

import (
	"context"
	"errors"
	"testing"

	"github.com/eraywen/lumen-blog/internal/repository"
	"github.com/eraywen/lumen-blog/internal/service/completion"
)

// 无存储时服务靠兜底默认值工作
func newDetachedService() *Service {
	return NewService(repository.NewSettingRepository(nil))
}

func TestModelDefaults(t *testing.T) {
	svc := newDetachedService()
	ctx := context.Background()

	general := svc.GeneralModel(ctx)
	if !completion.IsKnown(general) {
		t.Errorf("general default %q not in catalogue", general)
	}

	svg := svc.SVGModel(ctx)
	if !completion.IsKnown(svg) {
		t.Errorf("svg default %q not in catalogue", svg)
	}
}

func TestSetModelValidation(t *testing.T) {
	svc := newDetachedService()
	ctx := context.Background()

	if err := svc.SetGeneralModel(ctx, "gemini-3-pro"); err != nil {
		t.Errorf("known model rejected: %v", err)
	}
	if err := svc.SetGeneralModel(ctx, "gpt-99"); !errors.Is(err, completion.ErrUnknownModel) {
		t.Errorf("unknown model accepted: %v", err)
	}
	if err := svc.SetSVGModel(ctx, "gpt-99"); !errors.Is(err, completion.ErrUnknownModel) {
		t.Errorf("unknown svg model accepted: %v", err)
	}
}
