package domain

type Credentials struct {
	Email    Email
	Password Password
}

type RegistrationData struct {
	Credentials
	Name string
}
