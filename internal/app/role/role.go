package role

// Role описывает роль пользователя в системе
type Role uint

const (
	Superuser   Role = 1
	Admin       Role = 2
	TeamLeader  Role = 3
	Coordinator Role = 4
	Member      Role = 5
	Engineer    Role = 6
)

// Actor — контекст пользователя, от имени которого выполняется запрос
type Actor struct {
	UserID uint
	Name   string
	Role   Role
	TeamID *uint
}

// Visibility — область видимости строк для запросов дашборда.
// Ровно одно из полей задаёт ограничение; None имеет приоритет
type Visibility struct {
	All     bool
	None    bool
	TeamID  *uint // ограничение по команде
	OwnerID *uint // ограничение по закреплённому исполнителю
}

// ScopeFor строит область видимости по роли. По умолчанию закрыто:
// отсутствующий или неопознанный пользователь не видит ничего,
// независимо от остальных фильтров
func ScopeFor(actor *Actor, team *uint) Visibility {
	if actor == nil || actor.UserID == 0 {
		return Visibility{None: true}
	}

	switch actor.Role {
	case Superuser, Admin:
		// видят всё, при явном параметре команды сужаются до неё
		if team != nil {
			return Visibility{TeamID: team}
		}
		return Visibility{All: true}
	case TeamLeader, Coordinator, Engineer:
		// только своя команда; без команды — ничего
		if actor.TeamID == nil {
			return Visibility{None: true}
		}
		return Visibility{TeamID: actor.TeamID}
	default:
		// остальные роли видят только свои строки
		uid := actor.UserID
		return Visibility{OwnerID: &uid}
	}
}
