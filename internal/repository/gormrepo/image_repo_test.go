package gormrepo

import (
	"errors"
	"testing"

	"carsales-service/internal/domain/image"
	xerrors "carsales-service/internal/pkg/errors"
)

func assertDense(t *testing.T, repo *ImageRepository, vehicleID int64) []image.VehicleImage {
	t.Helper()
	list, err := repo.ListByVehicle(testCtx(t), vehicleID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	primaries := 0
	for i, img := range list {
		if img.Position != i+1 {
			t.Fatalf("position %d holds %d", i+1, img.Position)
		}
		if img.IsPrimary {
			primaries++
		}
	}
	if len(list) > 0 && primaries != 1 {
		t.Fatalf("expected exactly one primary, got %d", primaries)
	}
	return list
}

func TestImageRepositoryCreateBatchAppends(t *testing.T) {
	repo := NewImageRepository(openTestDB(t))

	first := seedImages(t, repo, 1, 2)
	if !first[0].IsPrimary || first[1].IsPrimary {
		t.Fatal("first image of an empty vehicle should be primary")
	}
	second := seedImages(t, repo, 1, 3)
	if second[0].Position != 3 || second[0].IsPrimary {
		t.Fatalf("appended image got position %d primary=%v", second[0].Position, second[0].IsPrimary)
	}
	if list := assertDense(t, repo, 1); len(list) != 5 {
		t.Fatalf("expected 5 images, got %d", len(list))
	}
}

func TestImageRepositoryCreateBatchGuard(t *testing.T) {
	repo := NewImageRepository(openTestDB(t))
	seedImages(t, repo, 1, 9)

	guard := func(current int64) error {
		if current+2 > image.MaxImagesPerVehicle {
			return xerrors.Invalid("too many")
		}
		return nil
	}
	err := repo.CreateBatch(testCtx(t), 1, []*image.VehicleImage{{Filename: "a"}, {Filename: "b"}}, guard)
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected guard error, got %v", err)
	}
	if n, _ := repo.CountByVehicle(testCtx(t), 1); n != 9 {
		t.Fatalf("guarded batch leaked rows: %d", n)
	}
}

func TestImageRepositoryDeletePrimaryCompactsAndPromotes(t *testing.T) {
	repo := NewImageRepository(openTestDB(t))
	imgs := seedImages(t, repo, 1, 3)

	deleted, err := repo.DeleteAndCompact(testCtx(t), imgs[0].ID, nil)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != imgs[0].ID {
		t.Fatalf("returned wrong image %d", deleted.ID)
	}

	list := assertDense(t, repo, 1)
	if len(list) != 2 || list[0].ID != imgs[1].ID || !list[0].IsPrimary {
		t.Fatalf("expected former position 2 promoted, got %+v", list)
	}
}

func TestImageRepositoryDeleteMiddle(t *testing.T) {
	repo := NewImageRepository(openTestDB(t))
	imgs := seedImages(t, repo, 1, 3)

	if _, err := repo.DeleteAndCompact(testCtx(t), imgs[1].ID, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list := assertDense(t, repo, 1)
	if list[0].ID != imgs[0].ID || list[1].ID != imgs[2].ID {
		t.Fatal("compaction changed relative order")
	}
	if _, err := repo.DeleteAndCompact(testCtx(t), 999, nil); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestImageRepositorySetPrimary(t *testing.T) {
	repo := NewImageRepository(openTestDB(t))
	imgs := seedImages(t, repo, 1, 3)
	other := seedImages(t, repo, 2, 1)

	if err := repo.SetPrimary(testCtx(t), 1, imgs[2].ID); err != nil {
		t.Fatalf("set primary: %v", err)
	}
	p, err := repo.FindPrimary(testCtx(t), 1)
	if err != nil || p.ID != imgs[2].ID {
		t.Fatalf("primary is %+v err=%v", p, err)
	}
	assertDense(t, repo, 1)

	if err := repo.SetPrimary(testCtx(t), 1, other[0].ID); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("foreign image accepted: %v", err)
	}
}

func TestImageRepositoryReorder(t *testing.T) {
	repo := NewImageRepository(openTestDB(t))
	imgs := seedImages(t, repo, 1, 3)

	swap := []image.ReorderItem{{ImageID: imgs[0].ID, Position: 3}, {ImageID: imgs[2].ID, Position: 1}}
	if err := repo.Reorder(testCtx(t), 1, swap); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	list := assertDense(t, repo, 1)
	if list[0].ID != imgs[2].ID || list[2].ID != imgs[0].ID {
		t.Fatalf("swap not applied: %+v", list)
	}

	gap := []image.ReorderItem{{ImageID: imgs[1].ID, Position: 5}}
	if err := repo.Reorder(testCtx(t), 1, gap); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected gap to be rejected, got %v", err)
	}
	assertDense(t, repo, 1)
}
