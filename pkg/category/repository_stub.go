package category

import "context"

type RepositoryStub struct {
	nextId int
	data   map[int]Category
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{data: map[int]Category{}}
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, category Category) (int, error) {
	s.nextId++
	category.Id = s.nextId
	s.data[category.Id] = category
	return category.Id, nil
}

func (s *RepositoryStub) GetById(ctx context.Context, userId int, categoryId int) (Category, error) {
	category, ok := s.data[categoryId]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, category Category) (bool, error) {
	if _, ok := s.data[category.Id]; !ok {
		return false, nil
	}
	s.data[category.Id] = category
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	if _, ok := s.data[categoryId]; !ok {
		return false, nil
	}
	delete(s.data, categoryId)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.data = map[int]Category{}
}
