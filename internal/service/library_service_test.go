package service_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"combatbible/gymdesk/internal/combo"
	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository/memory"
	"combatbible/gymdesk/internal/repository/seed"
	"combatbible/gymdesk/internal/service"
	"combatbible/gymdesk/internal/storage"
)

func newLibrary(t *testing.T, gen combo.Generator, files storage.FileStorage) service.LibraryService {
	t.Helper()
	if gen == nil {
		gen = combo.StaticGenerator{Count: 3}
	}
	lib, err := service.NewLibraryService(context.Background(), memory.NewTechniqueRepository(seed.Packs()), seed.DefaultGymID, gen, files)
	if err != nil {
		t.Fatalf("NewLibraryService() error = %v", err)
	}
	return lib
}

func TestLibraryService_List(t *testing.T) {
	lib := newLibrary(t, nil, nil)

	tests := []struct {
		name   string
		filter service.LibraryFilter
		want   []string
	}{
		{name: "all", want: []string{"tp1", "tp_private_1"}},
		{name: "official", filter: service.LibraryFilter{Origin: domain.OriginOfficial}, want: []string{"tp1"}},
		{name: "category", filter: service.LibraryFilter{Category: "Muay Thai Clinch"}, want: []string{"tp_private_1"}},
		{name: "query", filter: service.LibraryFilter{Query: "BOXING"}, want: []string{"tp1"}},
		{name: "no match", filter: service.LibraryFilter{Query: "wrestling"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range lib.List(tt.filter) {
				got = append(got, p.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLibraryService_PrivateEditing(t *testing.T) {
	ctx := context.Background()
	lib := newLibrary(t, nil, nil)
	before := lib.Snapshot()

	created, err := lib.CreatePrivatePack(ctx, domain.TechniquePack{Title: "Sweep Series", Category: "Clinch"})
	if err != nil {
		t.Fatalf("CreatePrivatePack() error = %v", err)
	}
	if created.Origin != domain.OriginPrivate || created.OwnerGymID != seed.DefaultGymID || !created.Editable || created.ID == "" {
		t.Errorf("created = %+v", created)
	}
	if before.Len() != 2 || lib.Snapshot().Len() != 3 {
		t.Errorf("snapshots: before=%d after=%d, old snapshot must not change", before.Len(), lib.Snapshot().Len())
	}

	created.Title = "Sweep Series II"
	if _, err := lib.UpdatePrivatePack(ctx, *created); err != nil {
		t.Fatalf("UpdatePrivatePack() error = %v", err)
	}
	if got := lib.Snapshot().Title(created.ID); got != "Sweep Series II" {
		t.Errorf("title = %q", got)
	}

	official, _ := lib.Pack("tp1")
	official.Title = "Hacked"
	if _, err := lib.UpdatePrivatePack(ctx, official); !errors.Is(err, service.ErrPackNotEditable) {
		t.Errorf("update official error = %v, want ErrPackNotEditable", err)
	}
	if err := lib.DeletePrivatePack(ctx, "tp1"); !errors.Is(err, service.ErrPackNotEditable) {
		t.Errorf("delete official error = %v, want ErrPackNotEditable", err)
	}
	if err := lib.DeletePrivatePack(ctx, "missing"); !errors.Is(err, service.ErrPackNotFound) {
		t.Errorf("delete missing error = %v", err)
	}

	if err := lib.DeletePrivatePack(ctx, created.ID); err != nil {
		t.Fatalf("DeletePrivatePack() error = %v", err)
	}
	if got := lib.Snapshot().Title(created.ID); got != domain.UnknownPackTitle {
		t.Errorf("deleted pack title = %q, want placeholder", got)
	}
}

func TestLibraryService_CreateRejectsInvalid(t *testing.T) {
	lib := newLibrary(t, nil, nil)
	if _, err := lib.CreatePrivatePack(context.Background(), domain.TechniquePack{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestLibraryService_GenerateCombos(t *testing.T) {
	ctx := context.Background()
	gen := &recordingGenerator{}
	lib := newLibrary(t, gen, nil)

	if _, err := lib.GenerateCombos(ctx, []string{"tp1", "tp1"}); !errors.Is(err, service.ErrNotEnoughBasePacks) {
		t.Errorf("duplicate bases error = %v", err)
	}
	if _, err := lib.GenerateCombos(ctx, []string{"tp1", "nope"}); !errors.Is(err, service.ErrPackNotFound) {
		t.Errorf("unknown base error = %v", err)
	}

	variations, err := lib.GenerateCombos(ctx, []string{"tp1", "tp_private_1"})
	if err != nil {
		t.Fatalf("GenerateCombos() error = %v", err)
	}
	if !reflect.DeepEqual(gen.titles, []string{"Boxing Basics", "Gym Clinch"}) {
		t.Errorf("generator titles = %v", gen.titles)
	}
	if variations[1].Title != "AI Combo 2" || variations[1].Category != domain.DefaultComboCategory {
		t.Errorf("fallbacks = %+v", variations[1])
	}

	saved, err := lib.SaveCombos(ctx, variations[:1])
	if err != nil {
		t.Fatalf("SaveCombos() error = %v", err)
	}
	if len(saved) != 1 || !strings.HasPrefix(saved[0].ID, "combo_") || !saved[0].EditableBy(seed.DefaultGymID) {
		t.Errorf("saved = %+v", saved)
	}
	if _, ok := lib.Pack(saved[0].ID); !ok {
		t.Error("saved combo missing from the snapshot")
	}
}

func TestLibraryService_GenerateCombosFailure(t *testing.T) {
	lib := newLibrary(t, failingGenerator{}, nil)
	_, err := lib.GenerateCombos(context.Background(), []string{"tp1", "tp_private_1"})
	if !errors.Is(err, service.ErrGenerationFailed) {
		t.Errorf("error = %v, want ErrGenerationFailed", err)
	}
}

func TestLibraryService_Videos(t *testing.T) {
	ctx := context.Background()

	t.Run("without storage", func(t *testing.T) {
		lib := newLibrary(t, nil, nil)
		if url, err := lib.ResolveVideo(ctx, "https://cdn.test/jab.mp4"); err != nil || url != "https://cdn.test/jab.mp4" {
			t.Errorf("external url = %q, %v", url, err)
		}
		if _, err := lib.ResolveVideo(ctx, "techniques/x.mp4"); !errors.Is(err, service.ErrStorageUnavailable) {
			t.Errorf("object key error = %v", err)
		}
		if _, err := lib.RequestVideoUpload(ctx, "tp_private_1", domain.LevelL1, "pa1", "video/mp4"); !errors.Is(err, service.ErrStorageUnavailable) {
			t.Errorf("upload error = %v", err)
		}
	})

	t.Run("with storage", func(t *testing.T) {
		files := &fakeStorage{}
		lib := newLibrary(t, nil, files)

		if _, err := lib.RequestVideoUpload(ctx, "tp1", domain.LevelL1, "a1", "video/mp4"); !errors.Is(err, service.ErrPackNotEditable) {
			t.Errorf("official upload error = %v", err)
		}
		if _, err := lib.RequestVideoUpload(ctx, "tp_private_1", domain.LevelL1, "zz", "video/mp4"); !errors.Is(err, service.ErrActionNotFound) {
			t.Errorf("unknown action error = %v", err)
		}
		if _, err := lib.RequestVideoUpload(ctx, "tp_private_1", domain.LevelL1, "pa1", "image/png"); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("content type error = %v", err)
		}

		up, err := lib.RequestVideoUpload(ctx, "tp_private_1", domain.LevelL1, "pa1", "video/mp4")
		if err != nil {
			t.Fatalf("RequestVideoUpload() error = %v", err)
		}
		if !strings.HasSuffix(up.UploadURL, up.ObjectKey) {
			t.Errorf("upload = %+v", up)
		}

		pack, _ := lib.Pack("tp_private_1")
		if a, _ := pack.Action(domain.LevelL1, "pa1"); a.VideoRef != up.ObjectKey {
			t.Errorf("video ref = %q, want %q", a.VideoRef, up.ObjectKey)
		}
		resolved := lib.ResolvePack(ctx, pack)
		if a, _ := resolved.Action(domain.LevelL1, "pa1"); a.VideoRef != "https://storage.test/get/"+up.ObjectKey {
			t.Errorf("resolved ref = %q", a.VideoRef)
		}

		if err := lib.DeletePrivatePack(ctx, "tp_private_1"); err != nil {
			t.Fatalf("DeletePrivatePack() error = %v", err)
		}
		if !reflect.DeepEqual(files.deleted, []string{up.ObjectKey}) {
			t.Errorf("deleted objects = %v", files.deleted)
		}
	})
}
