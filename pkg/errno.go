package pkg

// ErrorInfo, envelope'a yazılan hata kataloğu girdisi.
// Errno değerleri frontend ile sözleşmedir — değiştirilmemeli.
type ErrorInfo struct {
	Errno   int
	Message string
}

// Kullanıcı hataları (100xx)
var (
	RegisterUserNameExistInfo    = ErrorInfo{Errno: 10001, Message: "user name already exists"}
	RegisterFailInfo             = ErrorInfo{Errno: 10002, Message: "registration failed, please retry"}
	RegisterUserNameNotExistInfo = ErrorInfo{Errno: 10003, Message: "user name does not exist"}
	LoginFailInfo                = ErrorInfo{Errno: 10004, Message: "login failed, wrong user name or password"}
	LoginCheckFailInfo           = ErrorInfo{Errno: 10005, Message: "not logged in"}
	ChangePasswordFailInfo       = ErrorInfo{Errno: 10006, Message: "password change failed, please retry"}
	ChangeInfoFailInfo           = ErrorInfo{Errno: 10008, Message: "profile update failed"}
	ValidateFailInfo             = ErrorInfo{Errno: 10009, Message: "invalid request data"}
	DeleteUserFailInfo           = ErrorInfo{Errno: 10010, Message: "user deletion failed"}
	LoginRateLimitInfo           = ErrorInfo{Errno: 10011, Message: "too many login attempts"}
)

// Blog hataları (110xx)
var (
	CreateBlogFailInfo = ErrorInfo{Errno: 11001, Message: "blog creation failed, please retry"}
)
