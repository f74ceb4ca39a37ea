package customer

// Service holds customer CRUD plus registration and login checks.
type Service struct {
	repo     Repository
	verifier Verifier
}

func NewService(repo Repository, verifier Verifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

func (s *Service) List() ([]Customer, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int64) (Customer, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Update(id int64, c Customer) (Customer, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Customer{}, err
	}
	// only the profile fields are editable; identity and credential stay
	existing.Name = c.Name
	existing.Email = c.Email
	existing.Phone = c.Phone
	existing.Address = c.Address
	return s.repo.Update(id, existing)
}

func (s *Service) Delete(id int64) error {
	return s.repo.Delete(id)
}

// Register validates the fields, rejects duplicate username/email, encodes
// the password through the verifier and creates the customer.
func (s *Service) Register(c Customer) (Customer, error) {
	if err := c.Validate(); err != nil {
		return Customer{}, err
	}

	if _, err := s.repo.GetByUsername(c.Username); err == nil {
		return Customer{}, ErrUsernameTaken
	} else if err != ErrNotFound {
		return Customer{}, err
	}
	if _, err := s.repo.GetByEmail(c.Email); err == nil {
		return Customer{}, ErrEmailTaken
	} else if err != ErrNotFound {
		return Customer{}, err
	}

	stored, err := s.verifier.Encode(c.Password)
	if err != nil {
		return Customer{}, err
	}
	c.Password = stored

	created, err := s.repo.Create(c)
	if err != nil {
		return Customer{}, err
	}
	return sanitize(created), nil
}

// Authenticate looks the customer up by username and checks the password
// through the verifier. The error never reveals which part was wrong.
func (s *Service) Authenticate(username, password string) (Customer, error) {
	c, err := s.repo.GetByUsername(username)
	if err != nil {
		return Customer{}, ErrInvalidCredentials
	}
	if !s.verifier.Verify(password, c.Password) {
		return Customer{}, ErrInvalidCredentials
	}
	return sanitize(c), nil
}
