package viewmodel

import (
	"context"

	"github.com/Veraticus/fintracker/internal/controller"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/repository"
	"github.com/Veraticus/fintracker/internal/resource"
)

// CategoryDraft holds the new-category form while the user types.
type CategoryDraft struct {
	Name  string
	Type  string
	Icon  string
	Color string
}

// IsBlank returns true if every field is empty.
func (d CategoryDraft) IsBlank() bool {
	return d == CategoryDraft{}
}

// Category builds the create request. No validation happens here.
func (d CategoryDraft) Category() model.Category {
	return model.Category{
		Name:  d.Name,
		Type:  model.EntryType(d.Type),
		Icon:  d.Icon,
		Color: d.Color,
	}
}

// CategoryState is the categories screen snapshot.
type CategoryState struct {
	Draft CategoryDraft
	ListState[model.Category]
	SelectedTab int
}

// NewCategoryState returns the screen defaults: empty list, expenses tab, blank form.
func NewCategoryState() CategoryState {
	return CategoryState{ListState: NewListState[model.Category]()}
}

// Filtered returns the categories on the selected tab.
func (s CategoryState) Filtered() []model.Category {
	return FilterByTab(s.Items, s.SelectedTab)
}

func foldCategories(s CategoryState, r resource.Resource[[]model.Category]) CategoryState {
	s.ListState = FoldList(s.ListState, r)
	return s
}

func foldCreatedCategory(s CategoryState, r resource.Resource[model.Category]) CategoryState {
	s.ListState = FoldAppend(s.ListState, r)
	if r.IsSuccess() {
		s.Draft = CategoryDraft{}
	}
	return s
}

// CategoryViewModel drives the categories screen.
type CategoryViewModel struct {
	ctrl *controller.Controller[CategoryState]
	repo repository.Categories
}

// NewCategoryViewModel creates the view model and starts the initial fetch.
func NewCategoryViewModel(ctx context.Context, repo repository.Categories, opts ...controller.Option) *CategoryViewModel {
	vm := &CategoryViewModel{
		ctrl: controller.New(ctx, "categories", NewCategoryState(), opts...),
		repo: repo,
	}
	vm.Fetch()
	return vm
}

// State returns the latest snapshot.
func (vm *CategoryViewModel) State() CategoryState { return vm.ctrl.State() }

// Subscribe observes snapshots; see controller.Controller.Subscribe.
func (vm *CategoryViewModel) Subscribe() (<-chan CategoryState, func()) { return vm.ctrl.Subscribe() }

// Close tears the view model down.
func (vm *CategoryViewModel) Close() { vm.ctrl.Close() }

// Fetch reloads the list, superseding any fetch in flight.
func (vm *CategoryViewModel) Fetch() {
	controller.Start(vm.ctrl, opFetch, vm.repo.FetchAll, foldCategories, nil)
}

// Filtered returns the categories on the selected tab.
func (vm *CategoryViewModel) Filtered() []model.Category {
	return vm.State().Filtered()
}

// OnTabSelected switches between the expense (0) and income (1) tabs.
func (vm *CategoryViewModel) OnTabSelected(index int) CategoryState {
	return vm.ctrl.Update(func(s CategoryState) CategoryState {
		s.SelectedTab = index
		return s
	})
}

// OnNameChange updates the draft name.
func (vm *CategoryViewModel) OnNameChange(value string) CategoryState {
	return vm.updateDraft(func(d *CategoryDraft) { d.Name = value })
}

// OnTypeChange updates the draft type.
func (vm *CategoryViewModel) OnTypeChange(value string) CategoryState {
	return vm.updateDraft(func(d *CategoryDraft) { d.Type = value })
}

// OnIconChange updates the draft icon.
func (vm *CategoryViewModel) OnIconChange(value string) CategoryState {
	return vm.updateDraft(func(d *CategoryDraft) { d.Icon = value })
}

// OnColorChange updates the draft background color.
func (vm *CategoryViewModel) OnColorChange(value string) CategoryState {
	return vm.updateDraft(func(d *CategoryDraft) { d.Color = value })
}

func (vm *CategoryViewModel) updateDraft(edit func(*CategoryDraft)) CategoryState {
	return vm.ctrl.Update(func(s CategoryState) CategoryState {
		edit(&s.Draft)
		return s
	})
}

// Submit sends the draft as a new category. On success the created category
// is appended, the draft is cleared, the list is refetched to pick up
// server-side fields, and onSuccess (if not nil) is called.
func (vm *CategoryViewModel) Submit(onSuccess func()) {
	current := vm.ctrl.Update(func(s CategoryState) CategoryState {
		s.IsLoading = true
		s.Error = ""
		return s
	})
	request := current.Draft.Category()

	controller.Start(vm.ctrl, opCreate,
		func(ctx context.Context) resource.Stream[model.Category] {
			return vm.repo.Create(ctx, request)
		},
		foldCreatedCategory,
		func(r resource.Resource[model.Category]) {
			if !r.IsSuccess() {
				return
			}
			vm.Fetch()
			if onSuccess != nil {
				onSuccess()
			}
		},
	)
}
