package db

import "database/sql"

const (
	//Users
	sqlCreateUsersTable = `CREATE TABLE IF NOT EXISTS users(
                        usr varchar(100) NOT NULL PRIMARY KEY,
                        name varchar(100) NOT NULL,
                        email varchar(100) NOT NULL,
                        phone varchar(100) NOT NULL,
                        pwd varchar(100) NOT NULL
                        )`

	//Follows
	sqlCreateFollowsTable = `CREATE TABLE IF NOT EXISTS follows(
                        id uuid NOT NULL PRIMARY KEY,
                        flwer varchar(100) NOT NULL REFERENCES users(usr),
                        flwee varchar(100) NOT NULL REFERENCES users(usr),
                        start_date varchar(100) NOT NULL,
                        UNIQUE(flwer, flwee)
                        )`

	//Tweets
	sqlCreateTweetsTable = `CREATE TABLE IF NOT EXISTS tweets(
                        tid integer NOT NULL PRIMARY KEY,
                        writer_id varchar(100) NOT NULL REFERENCES users(usr),
                        text varchar(280) NOT NULL,
                        tdate varchar(100) NOT NULL,
                        ttime varchar(100) NOT NULL,
                        replyto_tid integer REFERENCES tweets(tid)
                        )`

	//Retweets
	sqlCreateRetweetsTable = `CREATE TABLE IF NOT EXISTS retweets(
                        id uuid NOT NULL PRIMARY KEY,
                        tid integer NOT NULL REFERENCES tweets(tid),
                        retweeter_id varchar(100) NOT NULL REFERENCES users(usr),
                        writer_id varchar(100) NOT NULL REFERENCES users(usr),
                        spam integer NOT NULL DEFAULT 0,
                        rdate varchar(100) NOT NULL,
                        UNIQUE(tid, retweeter_id)
                        )`

	//Hashtags
	sqlCreateHashtagMentionsTable = `CREATE TABLE IF NOT EXISTS hashtag_mentions(
                        tid integer NOT NULL REFERENCES tweets(tid),
                        term varchar(100) NOT NULL,
                        PRIMARY KEY(tid, term)
                        )`

	//Favorite lists
	sqlCreateListsTable = `CREATE TABLE IF NOT EXISTS lists(
                        owner_id varchar(100) NOT NULL REFERENCES users(usr),
                        lname varchar(100) NOT NULL,
                        PRIMARY KEY(owner_id, lname)
                        )`
	sqlCreateIncludeTable = `CREATE TABLE IF NOT EXISTS include(
                        owner_id varchar(100) NOT NULL,
                        lname varchar(100) NOT NULL,
                        tid integer NOT NULL REFERENCES tweets(tid),
                        PRIMARY KEY(owner_id, lname, tid),
                        FOREIGN KEY(owner_id, lname) REFERENCES lists(owner_id, lname)
                        )`
)

var schemaTables = []string{
	sqlCreateUsersTable,
	sqlCreateFollowsTable,
	sqlCreateTweetsTable,
	sqlCreateRetweetsTable,
	sqlCreateHashtagMentionsTable,
	sqlCreateListsTable,
	sqlCreateIncludeTable,
}

// CreateDB creates the database schema.
func (db *DB) CreateDB() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		for _, stmt := range schemaTables {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
